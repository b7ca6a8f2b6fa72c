package validation

// Request body schemas, one table per entity.
var (
	SignUp = Schema{Name: "signup", Fields: []Field{
		{Name: "full_name", Kind: String, Rules: "min=3,max=100", Message: "Full name must be 3 to 100 characters"},
		{Name: "email", Kind: String, Required: true, Rules: "email", Message: "Email format is invalid"},
		{Name: "password", Kind: String, Required: true, Rules: "min=5,max=50", Message: "Password must be 5 to 50 characters"},
	}}

	SignIn = Schema{Name: "signin", Fields: []Field{
		{Name: "email", Kind: String, Required: true, Rules: "email", Message: "Email format is invalid"},
		{Name: "password", Kind: String, Required: true, Rules: "min=5,max=50", Message: "Password must be 5 to 50 characters"},
	}}

	Account = Schema{Name: "account", Fields: SignUp.Fields}

	Category = Schema{Name: "category", Fields: []Field{
		{Name: "name", Kind: String, Required: true, Rules: "min=2,max=100", Message: "Category name must be 2 to 100 characters"},
	}}

	Product = Schema{Name: "product", Fields: []Field{
		{Name: "name", Kind: String, Required: true, Rules: "min=3,max=100", Message: "Product name must be 3 to 100 characters"},
		{Name: "price", Kind: Number, Required: true, Rules: "min=0", Message: "Price must not be negative"},
		{Name: "description", Kind: String, Required: true, Rules: "min=1", Message: "Description must not be empty"},
		{Name: "stock", Kind: Integer, Required: true, Rules: "min=0,max=1000000000", Message: "Stock must be between 0 and 1000000000"},
		{Name: "category", Kind: ID, Required: true, Message: "Category ID is invalid"},
	}}

	Order = Schema{Name: "order", Fields: []Field{
		{Name: "status", Kind: String, Rules: "oneof=processing shipped delivered", Message: "Status must be 'processing', 'shipped' or 'delivered'"},
		{Name: "total", Kind: Number, Rules: "min=0", Message: "Total must not be negative"},
		{Name: "account", Kind: ID, Required: true, Message: "Account ID is invalid"},
		{Name: "product", Kind: ID, Required: true, Message: "Product ID is invalid"},
	}}
)
