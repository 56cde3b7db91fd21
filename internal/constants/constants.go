package constants

const (
	// AIDir is the shared content directory at every installation root.
	AIDir = ".ai"

	// LockFileName is the lock document inside AIDir.
	LockFileName = ".skill-lock.json"

	// ConfigDirName holds the CLI's own configuration under the home directory.
	ConfigDirName = ".skillkit"

	// DefaultItemID is used when no identifier can be derived from a source.
	DefaultItemID = "skill"
)
