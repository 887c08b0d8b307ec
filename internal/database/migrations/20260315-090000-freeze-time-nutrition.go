package migrations

func init() {
	Register(Migration{
		Timestamp:   "20260315-090000",
		Description: "Add freeze_time and nutrition columns to recipes",
		Up: []string{
			`ALTER TABLE recipes ADD COLUMN freeze_time TEXT`,
			`ALTER TABLE recipes ADD COLUMN nutrition TEXT`,
		},
	})
}
