package core

// CategoryAmount represents an amount aggregated by category.
type CategoryAmount struct {
	Category Category
	Amount   Money
}

// Page is one slice of the expense list together with paging metadata.
type Page struct {
	Expenses   []Expense
	PageNumber int
	PageSize   int
	TotalItems int
	TotalPages int
}
