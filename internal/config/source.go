package config

// FileSource re-reads the configuration file on demand. The monitor loop
// loads a fresh snapshot through it at the start of every cycle, so live
// edits apply without a restart.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Load() (*Config, error) {
	return Load(s.path)
}
