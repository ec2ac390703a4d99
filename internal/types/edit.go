package types

// EditInfo describes a single change applied to a document.
// Offsets are byte offsets into the text before (Old*) and after (New*) the edit.
type EditInfo struct {
	StartOffset  int // Start byte of the edit
	OldEndOffset int // End byte of the replaced text
	NewEndOffset int // End byte of the inserted text
	StartLine    int // First line touched by the edit
	EndLine      int // Last line touched, in pre-edit numbering
	Deletions    int // Number of regions removed (0 for plain inserts)
}
