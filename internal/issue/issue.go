// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

// Id identifies a known failure condition.
type Id int

const (
	// ToolMissingId: the package manager could not be located or installed.
	ToolMissingId Id = iota + 1
	// EnvCreateFailedId: the virtual environment creation command failed.
	EnvCreateFailedId
	// DependencyInstallFailedId: the dependency install command failed.
	DependencyInstallFailedId
	// ManifestNotFoundId: the dependency manifest is missing.
	ManifestNotFoundId
	// VerificationFailedId: the application's version check failed.
	VerificationFailedId
	// ConfigLoadFailedId: the envup configuration could not be loaded.
	ConfigLoadFailedId
	// ProfileUpdateFailedId: the shell profile could not be updated.
	ProfileUpdateFailedId
)

// MarkdownMsg is markdown help text rendered for the user.
type MarkdownMsg string

// Issue pairs an Id with its rendered guidance.
type Issue struct {
	id    Id
	mdMsg MarkdownMsg
}

// IssueId returns the issue's identifier.
func (i *Issue) IssueId() Id {
	return i.id
}

// MarkdownMsg returns the raw markdown help text.
func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

// Render renders the markdown guidance with the given glamour style path.
func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	toolMissingIssue = &Issue{
		id: ToolMissingId,
		mdMsg: `
# Package manager not found!

We could not locate the package manager on PATH or in its usual install
directories, and the fallback installation failed too.

## Things you can try:
- Install it manually and re-run:
~~~
$ pip3 install --user uv
~~~
- Make sure ~/.local/bin is on your PATH:
~~~
$ export PATH="$HOME/.local/bin:$PATH"
~~~
- Run with verbose mode to see which strategies were tried:
~~~
$ envup --verbose up
~~~`,
	}

	envCreateFailedIssue = &Issue{
		id: EnvCreateFailedId,
		mdMsg: `
# Virtual environment creation failed!

The environment creation command exited with an error.

## Common causes:
- No write permission in the working directory
- A file (not a directory) already exists at the environment path
- The tool's bundled interpreter download was interrupted

## Things you can try:
- Remove a broken half-created directory and re-run:
~~~
$ rm -rf .venv && envup up
~~~
- Check free disk space and directory permissions`,
	}

	dependencyInstallFailedIssue = &Issue{
		id: DependencyInstallFailedId,
		mdMsg: `
# Dependency installation failed!

Installing the manifest into the environment exited with an error.

## Common causes:
- A package or version in the manifest does not exist
- No network access to the package index
- A package needs build tools that are not installed

## Things you can try:
- Re-run with verbose mode to see the tool's full output:
~~~
$ envup --verbose up
~~~
- Install the manifest manually to inspect the error:
~~~
$ uv pip install -r .devcontainer/requirements.txt
~~~`,
	}

	manifestNotFoundIssue = &Issue{
		id: ManifestNotFoundId,
		mdMsg: `
# Dependency manifest not found!

The requirements file the bootstrapper installs from does not exist.

## Things you can try:
- Check the configured manifest path:
~~~
$ envup config show
~~~
- Create the manifest, one package specifier per line:
~~~
$ mkdir -p .devcontainer
$ printf 'streamlit\npandas\n' > .devcontainer/requirements.txt
~~~`,
	}

	verificationFailedIssue = &Issue{
		id: VerificationFailedId,
		mdMsg: `
# Application verification failed!

The environment was created and populated, but the application's version
check did not succeed.

## Things you can try:
- Run the check yourself from inside the environment:
~~~
$ ./.venv/bin/streamlit --version
~~~
- Confirm the application is listed in the manifest
- If a failing check should not abort bootstrap, use the warn policy:
~~~
verify: policy: "warn"
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the envup configuration file.

## Configuration file locations:
- Linux: ~/.config/envup/config.cue
- macOS: ~/Library/Application Support/envup/config.cue
- Windows: %APPDATA%\envup\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ envup config init
~~~
- Remove the config file to fall back to defaults`,
	}

	profileUpdateFailedIssue = &Issue{
		id: ProfileUpdateFailedId,
		mdMsg: `
# Shell profile update failed!

The PATH export line could not be appended to your shell profile. The
bootstrap itself still succeeded; only the convenience export is missing.

## Things you can try:
- Append the line yourself:
~~~
$ echo 'export PATH="$HOME/.local/bin:$PATH"' >> ~/.bashrc
~~~
- Check the profile file's permissions`,
	}

	issues = map[Id]*Issue{
		toolMissingIssue.IssueId():             toolMissingIssue,
		envCreateFailedIssue.IssueId():         envCreateFailedIssue,
		dependencyInstallFailedIssue.IssueId(): dependencyInstallFailedIssue,
		manifestNotFoundIssue.IssueId():        manifestNotFoundIssue,
		verificationFailedIssue.IssueId():      verificationFailedIssue,
		configLoadFailedIssue.IssueId():        configLoadFailedIssue,
		profileUpdateFailedIssue.IssueId():     profileUpdateFailedIssue,
	}
)

// Values returns every known issue.
func Values() []*Issue {
	return maps.Values(issues)
}

// Get returns the issue for id, or nil when unknown.
func Get(id Id) *Issue {
	return issues[id]
}
