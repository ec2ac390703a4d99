// Package lang maps file names to the language identifiers used by
// syntax_ignore.
package lang

// PlainText is reported for files no registered language claims.
const PlainText = "plaintext"

// Language describes one language identifier and the files it covers.
type Language struct {
	// ID is the identifier matched against syntax_ignore, e.g. "markdown".
	ID string

	// Name is the display name shown in the status bar.
	Name string

	// Extensions are matched case-insensitively, dot included.
	Extensions []string

	// Filenames are exact base names such as "Makefile".
	Filenames []string
}

var builtin = []*Language{
	{ID: "go", Name: "Go", Extensions: []string{".go"}},
	{ID: "go.mod", Name: "Go Module", Filenames: []string{"go.mod", "go.work"}},
	{ID: "python", Name: "Python", Extensions: []string{".py", ".pyw", ".pyi"}},
	{ID: "javascript", Name: "JavaScript", Extensions: []string{".js", ".mjs", ".cjs", ".jsx"}},
	{ID: "typescript", Name: "TypeScript", Extensions: []string{".ts", ".tsx", ".mts", ".cts"}},
	{ID: "json", Name: "JSON", Extensions: []string{".json"}},
	{ID: "jsonc", Name: "JSON with Comments", Extensions: []string{".jsonc"}},
	{ID: "yaml", Name: "YAML", Extensions: []string{".yaml", ".yml"}},
	{ID: "toml", Name: "TOML", Extensions: []string{".toml"}},
	{ID: "markdown", Name: "Markdown", Extensions: []string{".md", ".markdown", ".mdown", ".mkd"}},
	{ID: "rust", Name: "Rust", Extensions: []string{".rs"}},
	{ID: "ruby", Name: "Ruby", Extensions: []string{".rb"}, Filenames: []string{"Gemfile", "Rakefile"}},
	{ID: "java", Name: "Java", Extensions: []string{".java"}},
	{ID: "c", Name: "C", Extensions: []string{".c", ".h"}},
	{ID: "cpp", Name: "C++", Extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh", ".hxx"}},
	{ID: "csharp", Name: "C#", Extensions: []string{".cs"}},
	{ID: "shellscript", Name: "Shell Script", Extensions: []string{".sh", ".bash", ".zsh"}},
	{ID: "html", Name: "HTML", Extensions: []string{".html", ".htm"}},
	{ID: "css", Name: "CSS", Extensions: []string{".css"}},
	{ID: "xml", Name: "XML", Extensions: []string{".xml", ".svg"}},
	{ID: "sql", Name: "SQL", Extensions: []string{".sql"}},
	{ID: "makefile", Name: "Makefile", Extensions: []string{".mk"}, Filenames: []string{"Makefile", "makefile", "GNUmakefile"}},
	{ID: "dockerfile", Name: "Dockerfile", Filenames: []string{"Dockerfile"}},
	{ID: "diff", Name: "Diff", Extensions: []string{".diff", ".patch"}},
	{ID: "plaintext", Name: "Plain Text", Extensions: []string{".txt", ".text"}},
}
