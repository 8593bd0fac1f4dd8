package interfaces

import "time"

// BlockKind distinguishes the two body segment types a document can carry.
type BlockKind string

const (
	// BlockProse marks a raw markdown text segment.
	BlockProse BlockKind = "prose"
	// BlockCode marks a fenced code segment whose content is opaque.
	BlockCode BlockKind = "code"
)

// FenceStyle records which fence syntax bounded a code block.
type FenceStyle string

const (
	// FenceLiquid marks a {% highlight %} ... {% endhighlight %} region.
	FenceLiquid FenceStyle = "liquid"
	// FenceBacktick marks a ``` ... ``` region.
	FenceBacktick FenceStyle = "backtick"
)

// Block is a single body segment: either markdown prose or a fenced code
// region carrying an optional language tag. Code text is verbatim; nothing
// downstream interprets it.
type Block struct {
	Kind      BlockKind
	Lang      string
	Fence     FenceStyle
	Text      string
	StartLine int
	// Unclosed is set when a code fence was never terminated before EOF.
	// Parsing still succeeds; validation surfaces it as a warning.
	Unclosed bool
}

// Pair is a raw front matter key/value scalar in document order, including
// repeats. Line is 1-based within the source file.
type Pair struct {
	Key   string
	Value string
	Line  int
}

// FrontMatter models the metadata block at the top of a content file. Typed
// fields cover the keys the toolkit acts on; Custom collects everything else
// and Raw is the union of both keyed by name. Pairs preserves the raw scalars
// in document order so the block can be re-serialized without loss.
type FrontMatter struct {
	Layout      string         `yaml:"layout" json:"layout"`
	Title       string         `yaml:"title" json:"title"`
	Date        time.Time      `yaml:"date" json:"date"`
	Description string         `yaml:"description" json:"description"`
	Categories  []string       `yaml:"categories" json:"categories"`
	Comments    bool           `yaml:"comments" json:"comments"`
	Draft       bool           `yaml:"draft" json:"draft"`
	Custom      map[string]any `yaml:",inline" json:"custom"`
	Raw         map[string]any `yaml:"-" json:"raw"`
	Pairs       []Pair         `yaml:"-" json:"-"`
}

// Document represents a parsed content file. It is constructed once per
// input file, is immutable afterwards, and carries no identity beyond a
// single build pass.
type Document struct {
	FilePath    string
	Collection  string
	FrontMatter FrontMatter
	Body        []byte
	Blocks      []Block
	BodyHTML    []byte
	// LastModified mirrors the source file's mod time when loaded from disk.
	LastModified time.Time
	// Checksum stores a SHA-256 digest of the original file content so sync
	// workflows can skip unchanged files without re-importing them.
	Checksum []byte
}

// Warning is a non-fatal validation finding. Validation never aborts
// processing; callers collect warnings and report them.
type Warning struct {
	Code    string
	Message string
	Path    string
	Line    int
}
