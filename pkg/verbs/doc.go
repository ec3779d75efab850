// Package verbs provides the builtin verb implementations: file retrieval
// and storage, HTTP download, terminal output and gzip compression.
//
// Each implementation is registered as a lexicon.Usage descriptor; the
// dispatcher binds sentence fragments to it and invokes its Act entry
// point. The package shows the collaborator contract hosts follow to add
// their own verbs.
package verbs
