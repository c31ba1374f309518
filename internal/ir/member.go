package ir

// MemberSection groups the members of one Doxygen sectiondef.
type MemberSection struct {
	Kind        string   `json:"kind"`            // public-func, var, define, ...
	Title       string   `json:"title,omitempty"` // header for user-defined sections
	Description []Block  `json:"description,omitempty"`
	Members     []Member `json:"members"`
}

// Member is a documented function, variable, typedef, enum or define.
type Member struct {
	ID          string       `json:"id"`
	Kind        string       `json:"kind"`
	Name        string       `json:"name"`
	Definition  string       `json:"definition,omitempty"`
	Args        string       `json:"args,omitempty"`
	Static      bool         `json:"static,omitempty"`
	Brief       []Block      `json:"brief,omitempty"`
	Detail      []Block      `json:"detail,omitempty"`
	Params      []Param      `json:"params,omitempty"`
	TParams     []Param      `json:"template_params,omitempty"`
	RetVals     []Param      `json:"return_values,omitempty"`
	Returns     []Block      `json:"returns,omitempty"`
	Exceptions  []Param      `json:"exceptions,omitempty"`
	Enumerators []Enumerator `json:"enumerators,omitempty"`
	Location    Location     `json:"location,omitempty"`
}

// Param documents one parameter, template parameter or return value.
type Param struct {
	Name        string  `json:"name"`
	Type        string  `json:"type,omitempty"`
	Direction   string  `json:"direction,omitempty"` // in, out, inout
	Description []Block `json:"description,omitempty"`
}

// Enumerator is one value of an enum member.
type Enumerator struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Initializer string  `json:"initializer,omitempty"`
	Description []Block `json:"description,omitempty"`
}
