// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// OwnedTable describes a knowledge-base table whose rows belong to one user.
type OwnedTable struct {
	Table  string
	ID     string
	UserID string
}

// Owned tables that can be referenced from another record.
var (
	KBSource  = OwnedTable{Table: "kb.source", ID: "id", UserID: "userid"}
	KBPeriod  = OwnedTable{Table: "kb.period", ID: "id", UserID: "userid"}
	KBTagType = OwnedTable{Table: "kb.tagtype", ID: "id", UserID: "userid"}
	KBTag     = OwnedTable{Table: "kb.tag", ID: "id", UserID: "userid"}
	KBFact    = OwnedTable{Table: "kb.fact", ID: "id", UserID: "userid"}
)
