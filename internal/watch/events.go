package watch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Folder identifies which watched folder a file lives in. The folder name
// decides routing: static and dynamic go straight to their partition,
// miscellaneous is classified first.
type Folder string

const (
	FolderStatic  Folder = "static"
	FolderDynamic Folder = "dynamic"
	FolderMisc    Folder = "miscellaneous"
)

var watchFolders = []Folder{FolderStatic, FolderDynamic, FolderMisc}

// ParseFolder validates a folder name coming from the CLI.
func ParseFolder(name string) (Folder, error) {
	for _, f := range watchFolders {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown watch folder %q", name)
}

// ChangeType is the normalized file-system change.
type ChangeType int

const (
	ChangeAdded ChangeType = iota
	ChangeModified
	ChangeDeleted
)

func (c ChangeType) String() string {
	switch c {
	case ChangeAdded:
		return "added"
	case ChangeModified:
		return "modified"
	case ChangeDeleted:
		return "deleted"
	}
	return "unknown"
}

// Event is one normalized change inside a watched folder.
type Event struct {
	Type   ChangeType
	Path   string
	Folder Folder
}

// changeType maps an fsnotify op to a ChangeType. Chmod-only events carry
// no content change and are dropped.
func changeType(op fsnotify.Op) (ChangeType, bool) {
	switch {
	case op.Has(fsnotify.Create):
		return ChangeAdded, true
	case op.Has(fsnotify.Write):
		return ChangeModified, true
	case op.Has(fsnotify.Remove), op.Has(fsnotify.Rename):
		return ChangeDeleted, true
	}
	return 0, false
}

// folderFor resolves which watched folder contains path.
func folderFor(baseDir, path string) (Folder, bool) {
	parent := filepath.Dir(path)
	for _, folder := range watchFolders {
		if parent == filepath.Join(baseDir, string(folder)) {
			return folder, true
		}
	}
	return "", false
}

// supportedExtensions mirrors the extraction strategies.
var supportedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".xlsx": {},
	".pptx": {},
	".html": {},
	".htm":  {},
	".txt":  {},
}

// ignorable reports files the watcher never acts on: hidden files and the
// README dropped into each folder for operators.
func ignorable(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	return strings.EqualFold(base, "README.TXT")
}

func supported(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}
