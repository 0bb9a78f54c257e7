// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	InvalidModeId Id = iota + 1
	MissingParentId
	PermissionDeniedId
	NotADirectoryId
	ConfigLoadFailedId
	UnknownUtilityId
)

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // man pages or docs describing the failing utility
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the issue as terminal markdown using a glamour standard
// style ("dark", "light", "auto", "notty").
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	invalidModeIssue = &Issue{
		id: InvalidModeId,
		mdMsg: `
# Invalid mode

The argument to **-m** is neither an octal number nor a symbolic mode.
Nothing was created.

## Accepted forms
- Octal, at most four digits: ` + "`755`, `0700`, `2775`" + `
- Symbolic clauses separated by commas: ` + "`u=rwx,g=rx,o=`, `a+rx`, `g+s`" + `

A clause is ` + "`[ugoa]*[+-=][rwxst]*`" + `. Only ` + "`=`" + ` may have an empty
permission list.`,
		docLinks: []HttpLink{"https://www.gnu.org/software/coreutils/manual/html_node/Symbolic-Modes.html"},
	}

	missingParentIssue = &Issue{
		id: MissingParentId,
		mdMsg: `
# Parent directory does not exist

mkdir only creates the last component of a path unless asked to do more.

## Things you can try
- Create the missing ancestors too:
~~~
$ coreutils mkdir -p path/to/dir
~~~`,
		docLinks: []HttpLink{"https://www.gnu.org/software/coreutils/manual/html_node/mkdir-invocation.html"},
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied

The operating system refused to create an entry in one of the directories
on the path.

## Things you can try
- Check write and search permission on the parent directory with ` + "`ls -ld`" + `
- Create the directory somewhere you own`,
	}

	notADirectoryIssue = &Issue{
		id: NotADirectoryId,
		mdMsg: `
# Not a directory

A component of the path already exists as a regular file, so nothing can
be created beneath it, or the target itself is a file.

## Things you can try
- Remove or rename the file that is in the way
- Choose a different path`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration

The configuration file could not be read or does not match the schema.
Built-in defaults are used instead.

## Things you can try
- Show where configuration is looked up:
~~~
$ coreutils config path
~~~
- Print a valid configuration to start from:
~~~
$ coreutils config dump
~~~`,
	}

	unknownUtilityIssue = &Issue{
		id: UnknownUtilityId,
		mdMsg: `
# Unknown utility

There is no built-in utility with that name.

## Things you can try
- List the available utilities:
~~~
$ coreutils list
~~~`,
	}

	issues = map[Id]*Issue{
		invalidModeIssue.Id():      invalidModeIssue,
		missingParentIssue.Id():    missingParentIssue,
		permissionDeniedIssue.Id(): permissionDeniedIssue,
		notADirectoryIssue.Id():    notADirectoryIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		unknownUtilityIssue.Id():   unknownUtilityIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	ids := slices.Sorted(maps.Keys(issues))
	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
