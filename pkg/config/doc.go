/*
Package config holds the replacement table and the settings of a rename run.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   JSON   | |   HCL    |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Defines the built-in table of fully-qualified name moves
- Loads alternative tables and filters from a file
- Validates that every old name is non-empty and unique

🔄 Flow:
1. Read the file (format chosen by extension)
2. Decode with unknown fields rejected
3. Validate fills defaults and builds the Table

⚡ Invariants:
- A Table is immutable once built
- Entries are applied in the order they are declared

🔍 Example:

	cfg, err := config.LoadConfig(ctx, "rename.yaml")
	if err != nil {
		return err
	}
	for _, r := range cfg.Table().Replacements() {
		fmt.Println(r.Old, "->", r.New)
	}
*/
package config
