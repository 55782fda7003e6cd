package cache

const (
	keyPrefixBackup  = "jobtracker:backup:"
	keyPrefixPrefs   = "jobtracker:prefs:"
	keyPrefixRevoked = "jobtracker:revoked:"
)

// BackupKey is the fixed per-owner key of the snapshot blob.
func BackupKey(ownerID string) string { return keyPrefixBackup + ownerID }

// PreferencesKey holds the owner's view preferences.
func PreferencesKey(ownerID string) string { return keyPrefixPrefs + ownerID }

// RevokedKey marks a signed-out token id.
func RevokedKey(tokenID string) string { return keyPrefixRevoked + tokenID }
