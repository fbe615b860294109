// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// Catalog entries.
const (
	LocationUnresolvedId Id = iota + 1
	ScriptNotFoundId
	ConfigLoadFailedId
)

type (
	// Id identifies a catalog entry.
	Id int

	// MarkdownMsg is the Markdown body of a catalog entry.
	MarkdownMsg string

	// HttpLink is a documentation link shown under "See also".
	HttpLink string

	// Issue is a catalog entry with long-form help.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

//nolint:gochecknoglobals // render is a test seam; the catalog is static.
var (
	render = glamour.Render

	locationUnresolvedIssue = &Issue{
		id: LocationUnresolvedId,
		mdMsg: `
# Cannot find where jsdocrun lives

The launcher looks up its own executable to find the scripts installed next
to it, and the operating system did not tell it where that is.

## Things you can try
- Run the launcher through its full path:
~~~
$ /opt/jsdoc/jsdocrun --help
~~~
- Make sure the executable was not deleted or replaced while running.
- On systems without /proc, run from a regular filesystem rather than a pipe or memfd.`,
		docLinks: []HttpLink{"https://pkg.go.dev/os#Executable"},
	}

	scriptNotFoundIssue = &Issue{
		id: ScriptNotFoundId,
		mdMsg: `
# main.js is missing

jsdocrun runs the ` + "`main.js`" + ` that sits in the same directory as the
executable. Symlinks to the launcher are followed first, so the script must
live next to the real binary.

## Things you can try
- List the launcher directory and check that main.js is there.
- Reinstall so the launcher and its scripts are unpacked together.
- Point ` + "`script`" + ` in jsdocrun.cue at a different file name.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded

jsdocrun reads an optional ` + "`jsdocrun.cue`" + ` next to the executable, or the
file named by ` + "`JSDOCRUN_CONFIG`" + `. Defaults were used instead.

## Example
~~~cue
script: "main.js"
log_level: "info"
launcher: duplicate_script_path: true
~~~`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	issues = map[Id]*Issue{
		locationUnresolvedIssue.Id(): locationUnresolvedIssue,
		scriptNotFoundIssue.Id():     scriptNotFoundIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
	}
)

// Id returns the catalog id.
func (i *Issue) Id() Id {
	return i.id
}

// Render renders the entry as terminal Markdown with the given glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- " + string(link) + "\n")
		}
	}
	return render(md.String(), stylePath)
}

// Get returns the catalog entry for id, or nil.
func Get(id Id) *Issue {
	return issues[id]
}
