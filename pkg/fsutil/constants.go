package fsutil

// File and directory permission constants, used consistently throughout the
// application.
const (
	// FileModeDefault is the default mode for regular files (-rw-r--r--).
	FileModeDefault = 0o644
	// FileModeSecure is for sensitive files (-rw-r-----).
	FileModeSecure = 0o640
	// DirModeDefault is the default mode for directories (drwxr-xr-x).
	DirModeDefault = 0o755
	// DirModeSecure is for sensitive directories (drwxr-x---).
	DirModeSecure = 0o750
)
