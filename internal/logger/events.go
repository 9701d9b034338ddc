package logger

// Event names attached to log records that mark accepted inconsistency windows.
const (
	EventUserPersistedSideEffectFailed = "USER_PERSISTED_SIDE_EFFECT_FAILED"
	EventAvatarBlobDeletedRecordKept   = "AVATAR_BLOB_DELETED_RECORD_KEPT"
	EventAvatarBlobMissing             = "AVATAR_BLOB_MISSING"
)
