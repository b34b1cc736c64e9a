package diagram

// Example is a bundled domain description used by the web UI and the
// examples command.
type Example struct {
	ID    int
	Title string
	Text  string
}

// Examples returns the bundled example descriptions in display order.
func Examples() []Example {
	return []Example{
		{
			ID:    1,
			Title: "School",
			Text: `Student has name, age and rollNumber.
Teacher has name, subject and experience.
Person has address and phoneNumber.
Student inherits from Person.
Teacher inherits from Person.`,
		},
		{
			ID:    2,
			Title: "Library",
			Text: `Book has title, author and ISBN.
Member has name, email and memberID.
Library consists of Book.
Librarian inherits from Member.
Member uses Book.`,
		},
		{
			ID:    3,
			Title: "Shop",
			Text: `Customer has name, email and address.
Product has name, price and description.
Order has orderDate and totalAmount.
Cart has items.
Customer has Cart.
Cart contains Product.
Order consists of Product.`,
		},
		{
			ID:    4,
			Title: "Garage",
			Text: `Car has color, model and year.
Engine has power, type and cylinders.
Vehicle has speed.
Car inherits from Vehicle.
Car consists of Engine.`,
		},
	}
}

// LookupExample returns the example with the given id.
func LookupExample(id int) (Example, bool) {
	for _, ex := range Examples() {
		if ex.ID == id {
			return ex, true
		}
	}
	return Example{}, false
}
