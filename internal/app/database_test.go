package app

import (
	"strings"
	"testing"

	"github.com/atelier-mireille/backend/config"
	"github.com/stretchr/testify/assert"
)

func TestMysqlDSN(t *testing.T) {
	dsn := mysqlDSN(config.DBConfig{
		User: "atelier", Passwd: "secret", Host: "db.internal", Port: 3306, Name: "am_database",
	})
	assert.True(t, strings.HasPrefix(dsn, "atelier:secret@tcp(db.internal:3306)/am_database?"))
	// matched rows, not changed rows: an update of identical values must
	// still count the row so it is not mistaken for a missing id
	assert.Contains(t, dsn, "clientFoundRows=true")
	assert.Contains(t, dsn, "parseTime=True")
}
