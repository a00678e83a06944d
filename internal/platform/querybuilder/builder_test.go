package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "title").
		From("days").
		Where(Eq("league_code", "lnjp")).
		OrderBy("matchday").
		Limit(5).
		ToSQL()
	if err != nil {
		t.Fatalf("build select: %v", err)
	}

	want := "SELECT id, title FROM days WHERE league_code = $1 ORDER BY matchday LIMIT 5"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if !reflect.DeepEqual(args, []any{"lnjp"}) {
		t.Fatalf("unexpected args: %v", args)
	}
}

func TestSelectBuilder_RequiresTable(t *testing.T) {
	if _, _, err := Select("id").ToSQL(); err == nil {
		t.Fatal("expected error for missing table")
	}
}

func TestInsertBuilder_MultiRowWithSuffix(t *testing.T) {
	query, args, err := InsertInto("day_matches").
		Columns("day_id", "external_match_id").
		Values("d1", int64(10)).
		Values("d1", int64(11)).
		Suffix("ON CONFLICT (day_id, external_match_id) DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert: %v", err)
	}

	want := "INSERT INTO day_matches (day_id, external_match_id) VALUES ($1, $2), ($3, $4) ON CONFLICT (day_id, external_match_id) DO NOTHING"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 4 {
		t.Fatalf("unexpected arg count: %d", len(args))
	}
}

func TestInsertBuilder_RejectsRaggedRow(t *testing.T) {
	_, _, err := InsertInto("t").Columns("a", "b").Values(1).ToSQL()
	if err == nil {
		t.Fatal("expected error for ragged row")
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("days").
		Set("status", "PUBLISHED").
		Set("matchday", 3).
		Where(Eq("id", "d1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update: %v", err)
	}

	want := "UPDATE days SET status = $1, matchday = $2 WHERE id = $3"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 3 {
		t.Fatalf("unexpected arg count: %d", len(args))
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("predictions").
		Where(Eq("day_id", "d1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete: %v", err)
	}

	want := "DELETE FROM predictions WHERE day_id = $1"
	if query != want {
		t.Fatalf("unexpected query:\n got: %s\nwant: %s", query, want)
	}
	if len(args) != 1 {
		t.Fatalf("unexpected arg count: %d", len(args))
	}
}

func TestDeleteBuilder_RequiresWhere(t *testing.T) {
	if _, _, err := DeleteFrom("predictions").ToSQL(); err == nil {
		t.Fatal("expected error for delete without conditions")
	}
}
