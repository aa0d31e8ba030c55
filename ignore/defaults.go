package ignore

// skipDirs are never descended into. They hold dependencies, build output or
// tool state, none of which belongs in an editable project.
var skipDirs = map[string]bool{
	".git": true, ".svn": true, ".hg": true,
	"node_modules": true, "bower_components": true, ".npm": true, ".yarn": true,
	"dist": true, "build": true, "out": true, ".next": true, ".nuxt": true,
	".cache": true, ".parcel-cache": true, ".turbo": true, ".vercel": true,
	"coverage": true, ".nyc_output": true,
	".idea": true, ".vscode": true,
	"__pycache__": true, ".venv": true, "venv": true,
}

// defaultPatterns are doublestar patterns matched against the base name.
var defaultPatterns = []string{
	// editor and OS droppings
	"*.swp", "*.swo", "*~", ".DS_Store", "Thumbs.db",
	// lock files are large and never edited by hand
	"package-lock.json", "yarn.lock", "pnpm-lock.yaml", "bun.lockb",
	// generated assets
	"*.min.js", "*.min.css", "*.map", "*.log",
	// binary assets the text editor cannot hold
	"*.{png,jpg,jpeg,gif,bmp,ico,webp,avif}",
	"*.{woff,woff2,ttf,eot,otf}",
	"*.{mp3,mp4,webm,wav,mov}",
	"*.{zip,tar,gz,tgz,7z,pdf}",
	"*.{exe,dll,so,dylib,wasm}",
	"*.{sqlite,sqlite3,db}",
}
