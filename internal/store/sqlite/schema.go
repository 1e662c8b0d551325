package sqlite

// schema is the fixed, idempotent DDL for the seven-entity data model of
// spec.md §3. Grounded on the teacher's internal/storage/sqlite/schema.go
// ("CREATE TABLE IF NOT EXISTS" per entity, CHECK constraints for closed
// enumerations, one index per filter column) but with no FOREIGN KEY
// declarations anywhere: spec.md §9 explains the teacher's own rationale for
// this ("the chosen embedded store historically mishandles updates in their
// presence") and mandates that referential integrity instead live in the
// Tool Surface (C3), which resolves every reference on write.
const schema = `
CREATE TABLE IF NOT EXISTS migrations (
    id TEXT PRIMARY KEY,
    user_name TEXT NOT NULL,
    years_on_source INTEGER NOT NULL DEFAULT 0,
    photo_count INTEGER,
    video_count INTEGER,
    total_source_storage_gb REAL,
    google_photos_baseline_gb REAL,
    google_drive_baseline_gb REAL,
    gmail_baseline_gb REAL,
    family_size INTEGER,
    family_group_name TEXT,
    phase TEXT NOT NULL DEFAULT 'initialization'
        CHECK (phase IN ('initialization','media_transfer','family_setup','validation','completed')),
    overall_progress INTEGER NOT NULL DEFAULT 0 CHECK (overall_progress BETWEEN 0 AND 100),
    started_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    completed_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_migrations_active ON migrations(completed_at);

CREATE TABLE IF NOT EXISTS family_members (
    id TEXT PRIMARY KEY,
    migration_id TEXT NOT NULL,
    name TEXT NOT NULL,
    role TEXT NOT NULL CHECK (role IN ('spouse','child','other')),
    age INTEGER,
    contact_handle TEXT,
    staying_on_source INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_family_members_migration ON family_members(migration_id);

CREATE TABLE IF NOT EXISTS family_app_adoptions (
    id TEXT PRIMARY KEY,
    member_id TEXT NOT NULL,
    service TEXT NOT NULL CHECK (service IN ('Messaging','Location','Payments')),
    status TEXT NOT NULL DEFAULT 'not_started'
        CHECK (status IN ('not_started','invited','installed','configured')),
    invited_at DATETIME,
    installed_at DATETIME,
    configured_at DATETIME,
    in_group INTEGER NOT NULL DEFAULT 0,
    location_share_sent INTEGER NOT NULL DEFAULT 0,
    location_share_received INTEGER NOT NULL DEFAULT 0,
    card_activated INTEGER NOT NULL DEFAULT 0,
    card_last_four TEXT NOT NULL DEFAULT '',
    UNIQUE (member_id, service)
);

CREATE TABLE IF NOT EXISTS media_transfers (
    id TEXT PRIMARY KEY,
    migration_id TEXT NOT NULL,
    source_photo_count INTEGER,
    source_video_count INTEGER,
    source_storage_gb REAL,
    baseline_photos_gb REAL,
    baseline_drive_gb REAL,
    baseline_mail_gb REAL,
    photo_status TEXT NOT NULL DEFAULT 'pending'
        CHECK (photo_status IN ('pending','initiated','in_progress','completed')),
    video_status TEXT NOT NULL DEFAULT 'pending'
        CHECK (video_status IN ('pending','initiated','in_progress','completed')),
    initiated_at DATETIME,
    photo_started_at DATETIME,
    photo_completed_at DATETIME,
    video_started_at DATETIME,
    video_completed_at DATETIME,
    first_visibility_day INTEGER,
    expected_completion_day INTEGER
);

CREATE INDEX IF NOT EXISTS idx_media_transfers_migration ON media_transfers(migration_id);

CREATE TABLE IF NOT EXISTS storage_snapshots (
    id TEXT PRIMARY KEY,
    migration_id TEXT NOT NULL,
    day_number INTEGER NOT NULL CHECK (day_number BETWEEN 1 AND 7),
    captured_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    photos_gb REAL NOT NULL DEFAULT 0,
    drive_gb REAL NOT NULL DEFAULT 0,
    mail_gb REAL NOT NULL DEFAULT 0,
    device_backup_gb REAL NOT NULL DEFAULT 0,
    total_used_gb REAL NOT NULL DEFAULT 0,
    growth_from_baseline_gb REAL NOT NULL DEFAULT 0,
    estimated_photos INTEGER NOT NULL DEFAULT 0,
    estimated_videos INTEGER NOT NULL DEFAULT 0,
    percent_complete REAL NOT NULL DEFAULT 0 CHECK (percent_complete BETWEEN 0 AND 100),
    is_baseline INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_snapshots_migration ON storage_snapshots(migration_id, id);
CREATE INDEX IF NOT EXISTS idx_snapshots_baseline ON storage_snapshots(migration_id, is_baseline);

CREATE TABLE IF NOT EXISTS daily_progress (
    migration_id TEXT NOT NULL,
    day_number INTEGER NOT NULL CHECK (day_number BETWEEN 1 AND 7),
    date DATETIME NOT NULL,
    photos_transferred INTEGER NOT NULL DEFAULT 0,
    videos_transferred INTEGER NOT NULL DEFAULT 0,
    size_transferred_gb REAL NOT NULL DEFAULT 0,
    storage_percent_complete REAL NOT NULL DEFAULT 0,
    adoption_counts TEXT NOT NULL DEFAULT '{}',
    key_milestone TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (migration_id, day_number)
);

-- Append-only record of selected store writes (migration create/update,
-- member add, transfer initiation, ignored adoption regressions),
-- independent of the tool-calls.jsonl audit trail (internal/audit): this table backs
-- within-store observability (e.g. reconstructing why an adoption write
-- became a no-op) the way the teacher's own "events" table backs its
-- issue history.
CREATE TABLE IF NOT EXISTS write_log (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    migration_id TEXT NOT NULL,
    occurred_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    operation TEXT NOT NULL,
    detail TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_write_log_migration ON write_log(migration_id, id);
`
