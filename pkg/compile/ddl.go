package compile

import (
	"fmt"
	"strings"
)

// CreateTableAs is a create-table-as-select statement. The Select body
// comes from the first statement unit of a compiled plan together with
// that plan's Context; multi-statement expressions are not supported as
// CTAS bodies.
type CreateTableAs struct {
	Context   *Context
	TableName string
	Database  string
	Format    string
	Overwrite bool
	Select    *Select
}

// Compile renders the CREATE TABLE statement. When Overwrite is false,
// an IF NOT EXISTS guard is emitted so an existing table is left alone.
func (c *CreateTableAs) Compile() (string, error) {
	if c.TableName == "" {
		return "", fmt.Errorf("compile: create table requires a table name")
	}
	if c.Select == nil {
		return "", fmt.Errorf("compile: create table %q has no select body", c.TableName)
	}

	body, err := c.Select.Compile()
	if err != nil {
		return "", err
	}

	format := c.Format
	if format == "" {
		format = "parquet"
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	if !c.Overwrite {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(qualifiedName(c.Database, c.TableName))
	fmt.Fprintf(&b, "\nSTORED AS %s\nAS\n", strings.ToUpper(format))
	b.WriteString(body)
	return b.String(), nil
}

func (*CreateTableAs) stmtNode() {}

// DropTable is a drop-table statement. When MustExist is false the
// statement text carries an IF EXISTS guard: engines raise on absent
// tables otherwise, and swallowing that driver error is not an
// acceptable substitute.
type DropTable struct {
	TableName string
	Database  string
	MustExist bool
}

// Compile renders the DROP TABLE statement.
func (d *DropTable) Compile() (string, error) {
	if d.TableName == "" {
		return "", fmt.Errorf("compile: drop table requires a table name")
	}

	var b strings.Builder
	b.WriteString("DROP TABLE ")
	if !d.MustExist {
		b.WriteString("IF EXISTS ")
	}
	b.WriteString(qualifiedName(d.Database, d.TableName))
	return b.String(), nil
}

func (*DropTable) stmtNode() {}

func qualifiedName(database, name string) string {
	if database == "" {
		return name
	}
	return database + "." + name
}
