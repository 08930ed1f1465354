// Package sqlcte performs a conditional update that also tells whether the
// target row exists, in a single statement.
//
// A plain guarded UPDATE reports zero affected rows both when the row is
// missing and when its guard predicate rejected the change. Request wraps the
// caller's UPDATE in a common table expression that looks the row up by key
// alongside the update:
//
//	WITH "found" AS (SELECT "id" FROM "objects" WHERE "id" = $1),
//	     "updated" AS (UPDATE "objects" SET ... WHERE <guard> RETURNING *)
//	SELECT "found"."id", "updated"."id"
//	FROM "found" LEFT JOIN "updated" ON "found"."id" = "updated"."id"
//
// and classifies the single result row into an updatecte.Outcome:
//
//	objects := sqlcte.NewTable("objects", sql.Column[uuid.UUID]("id"))
//	u := sql.Dialect(dialect.Postgres).
//	    Update("objects").
//	    Set("runtime", "new").
//	    Where(sql.And(sql.EQ("id", id), sql.GTE("gen", 2)))
//	req, err := sqlcte.CheckIfExists(objects, u, id)
//	if err != nil {
//	    return err
//	}
//	outcome, err := req.Exec(ctx, drv)
//
// A missing row is reported as updatecte.RowMissing, never as an error.
//
// Data-modifying common table expressions are a PostgreSQL feature; requests
// built for other dialects fail to compile.
package sqlcte
