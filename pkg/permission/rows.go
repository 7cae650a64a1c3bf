package permission

// Row is one granted permission as stored in the database, typically
// the result of joining users to roles to role permissions. A zero
// JunctionID with an empty JunctionTable means a global grant.
type Row struct {
	Name          string `db:"name"`
	JunctionTable string `db:"junction_table"`
	JunctionID    int64  `db:"junction_id"`
}

// FromRows assembles a Set from permission rows. Rows with a junction
// become junction grants; the rest become global grants. Duplicate
// rows collapse.
func FromRows(rows []Row) *Set {
	s := NewSet()
	for _, row := range rows {
		if row.Name == "" {
			continue
		}
		if row.JunctionTable != "" && row.JunctionID > 0 {
			s.GrantJunction(row.JunctionTable, row.JunctionID, row.Name)
			continue
		}
		s.Grant(row.Name)
	}
	return s
}
