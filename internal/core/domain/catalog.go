package domain

// Reference catalogs used to populate the dataset form's select options.
// All three are served by the upstream platform and never mutated here.

// DatasetType is an entry of the dataset type catalog.
type DatasetType struct {
	ID   int64
	Name string
}

// Country is an entry of the country catalog.
type Country struct {
	ID   int64
	Name string
}

// Region is an entry of the region (province) catalog.
type Region struct {
	ID   int64
	Name string
}
