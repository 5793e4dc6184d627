package domain

var Tables = []interface{}{
	// System
	&Setting{},
	// Catalog
	&Product{},
	// Intake
	&CustomOrder{},
	&ContactRequest{},
}
