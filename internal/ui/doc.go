// Package ui holds the color themes of padicalc and the lipgloss table
// renderer shared by the batch summary and the digit tables.
package ui
