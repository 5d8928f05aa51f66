// Package pkg holds build metadata and the runtime paths shared by the
// command and its subcommands.
//
//nolint:gochecknoglobals
package pkg

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed VERSION
var version string

// Version is the semantic version embedded at build time.
var Version = strings.TrimSpace(version)

const (
	// Name is the command name. It appears in help text and default paths.
	Name = "modreq"

	// Description is the one-line summary printed in help output.
	Description = "Parse, filter, and compose module request identifiers"
)

// AuthorInfo is an author's name and email address.
type AuthorInfo struct {
	Name  string
	Email string
}

// Author lists the primary author(s).
var Author = []AuthorInfo{
	{"ardnew", "andrew@ardnew.com"},
}

func (a AuthorInfo) String() string { return fmt.Sprintf("%s <%s>", a.Name, a.Email) }

// VersionInfo is the text printed by --version.
func VersionInfo() string {
	authors := make([]string, len(Author))
	for i, a := range Author {
		authors[i] = a.String()
	}

	return Name + " " + Version + " (" + strings.Join(authors, ", ") + ")"
}
