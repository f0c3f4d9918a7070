// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"
	"maps"
	"slices"

	"github.com/charmbracelet/glamour"
)

type Id int

const (
	AddOnNotFoundId Id = iota + 1
	ConfigLoadFailedId
	RepositoryURLNotFoundId
	SourceControlFailedId
	InvalidTemplateId
	PermissionDeniedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
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

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	addOnNotFoundIssue = &Issue{
		id: AddOnNotFoundId,
		mdMsg: `
# AddOn not found!

The path you passed is not an AddOn directory.

## Things you can try:
- Pass the directory that holds the AddOn's .toc files:
~~~
$ libembed ~/wow/Interface/AddOns/MyAddOn
~~~

- Check for typos in the directory name
- AddOn directory names match the base name of their .toc files`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the libembed configuration file.

## Configuration file locations:
- Linux: ~/.config/libembed/config.cue
- macOS: ~/Library/Application Support/libembed/config.cue
- Windows: %APPDATA%\libembed\config.cue
- ./config.cue in the current directory

## Things you can try:
- Create a default configuration:
~~~
$ libembed config init
~~~

- Print the built-in defaults:
~~~
$ libembed config show
~~~

## Example configuration:
~~~cue
vendor_dir: "libs"
script_patterns: ["**/*.lua"]

git: {
  command: "git"
}
~~~`,
	}

	repositoryURLNotFoundIssue = &Issue{
		id: RepositoryURLNotFoundId,
		mdMsg: `
# Repository URL not found!

A library the AddOn depends on has no submodule entry in .gitmodules, so
there is nothing to vendor it from. Nothing has been changed yet.

## Things you can try:
- Register the library as a submodule of the repository that holds your AddOns:
~~~
$ git submodule add https://github.com/you/MyLibrary.git AddOns/MyLibrary
~~~

- Point libembed at the directory that holds .gitmodules:
~~~cue
repository_root: "../.."
~~~`,
	}

	sourceControlFailedIssue = &Issue{
		id: SourceControlFailedId,
		mdMsg: `
# git failed!

A git command that vendors a library returned an error.

## Common causes:
- git is not installed or not in PATH
- The AddOn is not inside a git work tree
- The submodule path is already registered
- The repository URL is not reachable

## Things you can try:
- Run with verbose mode to see each git command:
~~~
$ libembed --verbose <addon-path>
~~~

- Configure the git command line:
~~~cue
git: {
  command: "git -c protocol.file.allow=always"
}
~~~`,
	}

	invalidTemplateIssue = &Issue{
		id: InvalidTemplateId,
		mdMsg: `
# Invalid acquisition template!

The acquisition_template in your configuration is not a valid Handlebars template.

## Available fields:
- **name**: the library name
- **version**: the library version
- **constraint**: the caret constraint for the version, e.g. ^1.2.3
- **runtime**: the runtime global name

## Example:
~~~cue
acquisition_template: "local {{{name}}} = {{{runtime}}}.retrieve('{{{name}}}', '{{{constraint}}}')"
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

You don't have permission to perform this operation.

## Common causes:
- The AddOn directory is read-only
- The game client holds a lock on AddOn files

## Things you can try:
- Check file/directory permissions
- Close the game client and try again`,
	}

	issues = map[Id]*Issue{
		addOnNotFoundIssue.Id():         addOnNotFoundIssue,
		configLoadFailedIssue.Id():      configLoadFailedIssue,
		repositoryURLNotFoundIssue.Id(): repositoryURLNotFoundIssue,
		sourceControlFailedIssue.Id():   sourceControlFailedIssue,
		invalidTemplateIssue.Id():       invalidTemplateIssue,
		permissionDeniedIssue.Id():      permissionDeniedIssue,
	}
)

// Values returns every catalogued issue ordered by Id.
func Values() []*Issue {
	return slices.SortedFunc(maps.Values(issues), func(a, b *Issue) int {
		return cmp.Compare(a.id, b.id)
	})
}

func Get(id Id) *Issue {
	return issues[id]
}
