package model

// Settings holds tool settings loaded from relmake.toml
type Settings struct {
	Wheel WheelSettings `toml:"wheel"`
	Docs  DocsSettings  `toml:"docs"`
	Test  TestSettings  `toml:"test"`
	Git   GitSettings   `toml:"git"`
}

// WheelSettings controls wheel build and push
type WheelSettings struct {
	BuildCommand []string `toml:"build_command"`
	PushCommand  []string `toml:"push_command"`
	CleanDirs    []string `toml:"clean_dirs"`
	DistDir      string   `toml:"dist_dir"`
}

// DocsSettings controls documentation generation and publishing
type DocsSettings struct {
	Command      []string `toml:"command"`
	SourceDir    string   `toml:"source_dir"`
	BuildDir     string   `toml:"build_dir"`
	PublishDir   string   `toml:"publish_dir"`
	AuxFile      string   `toml:"aux_file"`
	StripPattern string   `toml:"strip_pattern"`
}

// TestSettings controls the test suite invocation
type TestSettings struct {
	Command []string `toml:"command"`
}

// GitSettings controls the post-bump git sequence
type GitSettings struct {
	Remote    string `toml:"remote"`
	TagPrefix string `toml:"tag_prefix"`
}

// DefaultSettings returns settings for a conventional setuptools + sphinx project
func DefaultSettings() Settings {
	return Settings{
		Wheel: WheelSettings{
			BuildCommand: []string{"python", "setup.py", "sdist", "bdist_wheel"},
			PushCommand:  []string{"twine", "upload"},
			CleanDirs:    []string{"build", "dist"},
			DistDir:      "dist",
		},
		Docs: DocsSettings{
			Command:      []string{"make", "html"},
			SourceDir:    "sphinx",
			BuildDir:     "sphinx/_build/html",
			PublishDir:   "docs",
			AuxFile:      "sphinx/CNAME",
			StripPattern: `modernizr.min.js"`,
		},
		Test: TestSettings{
			Command: []string{"python", "-m", "tests"},
		},
		Git: GitSettings{
			Remote: "origin",
		},
	}
}
