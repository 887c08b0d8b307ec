package migrations

func init() {
	Register(Migration{
		Timestamp:   "20260301-120000",
		Description: "Create recipes table",
		Up: []string{
			`CREATE TABLE IF NOT EXISTS recipes (
				id TEXT PRIMARY KEY,
				url TEXT NOT NULL UNIQUE,
				title TEXT NOT NULL,
				description TEXT,
				image TEXT,
				author TEXT,
				prep_time TEXT,
				cook_time TEXT,
				total_time TEXT,
				recipe_yield TEXT,
				recipe_category TEXT,
				recipe_cuisine TEXT,
				ingredients TEXT NOT NULL DEFAULT '[]',
				instructions TEXT NOT NULL DEFAULT '[]',
				notes TEXT,
				created_at TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_recipes_created_at ON recipes(created_at)`,
		},
	})
}
