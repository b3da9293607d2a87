package sqlstore

import "testing"

func TestRebind(t *testing.T) {
	pg := &Store{d: Dialect{NumberedParams: true}}
	if got := pg.rebind(`UPDATE routines SET name = ?, duration = ? WHERE id = ?`); got != `UPDATE routines SET name = $1, duration = $2 WHERE id = $3` {
		t.Fatalf("unexpected rebind: %s", got)
	}
	lite := &Store{d: Dialect{}}
	if got := lite.rebind(`DELETE FROM routines WHERE id = ?`); got != `DELETE FROM routines WHERE id = ?` {
		t.Fatalf("sqlite query must be unchanged: %s", got)
	}
}
