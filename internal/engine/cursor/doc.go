// Package cursor provides the selection model used by the editor.
//
// A Selection holds two row/column points. Start is where the selection
// began and End is the active end where typing occurs; End may come before
// Start for a backward selection. When Start == End the selection is just a
// cursor.
//
// Points are logical positions. Columns count characters, so a point stays
// meaningful regardless of how many bytes each character takes. Use
// Clamp or OffsetRange to relate a selection to a specific buffer.
package cursor
