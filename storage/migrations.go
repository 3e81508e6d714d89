package storage

var pgMigration = []string{
	`CREATE TABLE summary (
id uuid PRIMARY KEY,
youtube_id VARCHAR(255) NOT NULL,
url TEXT NOT NULL,
title VARCHAR(255) NOT NULL DEFAULT '',
summary TEXT NOT NULL DEFAULT '',
created_at TIMESTAMP WITH TIME ZONE NOT NULL
)`,
	`CREATE INDEX summary_created_at_idx ON summary (created_at DESC)`,
}
