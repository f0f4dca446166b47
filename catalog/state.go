package catalog

// Form holds the controlled fields of the add-product form. Price is kept as
// the raw text the user typed.
type Form struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
}

// Product validates the form against the current collection and builds the
// record a submission would append.
func (f Form) Product(existing []Product) (Product, error) {
	price, err := ParsePrice(f.Price)
	if err != nil {
		return Product{}, err
	}

	id, err := NextID(existing)
	if err != nil {
		return Product{}, err
	}

	return Product{
		ID:          id,
		Name:        f.Name,
		Price:       price,
		Image:       DefaultImage,
		Description: f.Description,
	}, nil
}

// State is everything the controller renders from. Transitions return a new
// State and never write to the receiver's collection.
type State struct {
	Products []Product `json:"products"`
	Loading  bool      `json:"loading"`
	Form     Form      `json:"form"`
}

// Initial is the state right after mount.
func Initial() State {
	return State{
		Products: []Product{},
		Loading:  true,
	}
}

// Loaded replaces the collection wholesale and leaves the loading state.
func (s State) Loaded(products []Product) State {
	next := make([]Product, len(products))
	copy(next, products)

	s.Products = next
	s.Loading = false
	return s
}

// Edited replaces the form fields.
func (s State) Edited(form Form) State {
	s.Form = form
	return s
}

// Submitted appends p to a copy of the collection and clears the form.
func (s State) Submitted(p Product) State {
	next := make([]Product, len(s.Products), len(s.Products)+1)
	copy(next, s.Products)

	s.Products = append(next, p)
	s.Form = Form{}
	return s
}
