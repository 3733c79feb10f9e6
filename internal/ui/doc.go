// Package ui provides semantic text formatting for tagkeys output.
//
// Formatters color text when the terminal supports it. When NO_COLOR is set
// or colors are unavailable, text decorations are used instead:
//
//	ui.Code.Sprint("tagkeys keys add guild")  // `tagkeys keys add guild`
//	ui.Tag.Sprint("guild")                    // 'guild'
//	ui.Muted.Sprint("locked")                 // (locked)
//
// Path, Success, Error, Warning and Info carry no decoration without color.
//
// Mask hides a password for display. tagkeys never prints a stored password
// in full.
package ui
