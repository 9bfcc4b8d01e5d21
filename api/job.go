package api

// Job describes one harvest run: a take template applied to every
// document in a set of sources, with results written to a store. Jobs
// are declared in HCL.
type Job struct {
	// Template is the path of the take template file.
	Template string `hcl:"template"`
	// BaseURL resolves relative URLs in harvested documents.
	BaseURL string `hcl:"base_url,optional"`
	// Sources name the document sets to harvest.
	Sources []Source `hcl:"source,block"`
	// Output configures the result store.
	Output Output `hcl:"output,block"`
}

// Source is one named set of documents on disk.
type Source struct {
	// Name labels results harvested from this source.
	Name string `hcl:"name,label"`
	// Dir is the directory to scan.
	Dir string `hcl:"dir"`
	// Glob filters files by base name. Defaults to "*.html".
	Glob string `hcl:"glob,optional"`
}

// Output says where harvested results go.
type Output struct {
	// Path of the SQLite database file.
	Path string `hcl:"path"`
}
