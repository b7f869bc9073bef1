// Package icons maps file names to emoji icons and display colors.
package icons

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

const (
	Directory = "📁"
	File      = "📄"
)

var extIcons = map[string]string{
	"rs": "🦀", "py": "🐍", "js": "🧩", "mjs": "🧩", "ts": "🧠", "tsx": "🧠",
	"java": "☕", "c": "⚙️", "h": "⚙️", "cc": "⚙️", "cpp": "⚙️", "cxx": "⚙️", "hpp": "⚙️",
	"go": "🐹", "php": "🐘", "rb": "💎", "swift": "🕊️", "kt": "🤖", "kts": "🤖",
	"dart": "🎯", "lua": "🌙", "html": "🌐", "css": "🎨", "scss": "🎨", "less": "🎨",
	"sql": "🗄️",

	"toml": "⚙️", "yaml": "⚙️", "yml": "⚙️", "json": "⚙️", "ini": "⚙️",
	"lock": "🔒", "sh": "💻", "bash": "💻", "zsh": "💻", "ps1": "💻",
	"env": "🌱", "dockerfile": "🐳", "mk": "🔧", "conf": "🧩", "cfg": "🧩",

	"md": "📝", "markdown": "📝", "txt": "📄", "pdf": "📕",
	"doc": "📘", "docx": "📘", "xls": "📗", "xlsx": "📗", "ods": "📗",
	"ppt": "📙", "pptx": "📙", "odp": "📙", "rtf": "📜",

	"zip": "🗜️", "gz": "🗜️", "tar": "🗜️", "rar": "🗜️", "7z": "🗜️", "bz2": "🗜️", "iso": "💿",

	"png": "🖼️", "jpg": "🖼️", "jpeg": "🖼️", "gif": "🖼️", "bmp": "🖼️", "svg": "🖼️", "ico": "🖼️", "webp": "🖼️",
	"psd": "🎨", "xcf": "🎨",
	"mp3": "🎵", "wav": "🎵", "flac": "🎵", "ogg": "🎵", "m4a": "🎵",
	"mp4": "🎞️", "mkv": "🎞️", "avi": "🎞️", "mov": "🎞️", "webm": "🎞️",
	"srt": "💬", "vtt": "💬",

	"csv": "📊", "tsv": "📊", "xml": "📊", "db": "🗃️", "sqlite": "🗃️", "db3": "🗃️", "log": "📜",
	"exe": "⚡", "bin": "⚡", "app": "⚡", "msi": "⚡", "dll": "🧱", "so": "🧱", "dylib": "🧱",
	"bat": "🪟", "cmd": "🪟",
	"jsonl": "🌐", "ndjson": "🌐", "wasm": "🧬", "pem": "🔐", "crt": "🔐", "cer": "🔐", "key": "🔐",
}

// lexerIcons covers extension-less names recognized by chroma, keyed by lexer name.
var lexerIcons = map[string]string{
	"Docker":        "🐳",
	"Base Makefile": "🔧",
	"Makefile":      "🔧",
	"Bash":          "💻",
	"CMake":         "🔧",
	"Ruby":          "💎",
	"Python":        "🐍",
	"Go":            "🐹",
}

// For returns the icon for a file or directory name.
func For(name string, isDir bool) string {
	if isDir {
		return Directory
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if icon, ok := extIcons[ext]; ok {
		return icon
	}
	if lexer := lexers.Match(name); lexer != nil {
		if icon, ok := lexerIcons[lexer.Config().Name]; ok {
			return icon
		}
	}
	return File
}
