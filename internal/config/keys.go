package config

// Keys read by the backup run. The stored names are a persisted contract:
// BackupDebug=true means Debug builds are NOT backed up.
var (
	BackupDebug   = BoolKey("BackupDebug", false, WithTag("Backup"))
	BackupRelease = BoolKey("BackupRelease", false, WithTag("Backup"))
	SavePath      = TextKey("SavePath", "", WithTag("Backup"))
	History       = BoolKey("History", true, WithTag("History"))
)

type keySpec struct {
	key  Key
	help string
}

var specs = []keySpec{
	{key: BackupDebug, help: "skip backups of Debug builds when true"},
	{key: BackupRelease, help: "skip backups of Release builds when true"},
	{key: SavePath, help: "backup root directory (empty: executable directory)"},
	{key: History, help: "record completed backups in buildextra.db"},
}
