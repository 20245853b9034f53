package constants

// RecipeName identifies which extraction strategy produced a scan result.
type RecipeName string

// Stable values (store these exact strings in DB).
const (
	RecipeMobilePayment RecipeName = "mobile-payment"
	RecipeStoreReceipt  RecipeName = "store-receipt"
	RecipeGeneric       RecipeName = "generic-receipt"
)

var allRecipes = []RecipeName{
	RecipeMobilePayment,
	RecipeStoreReceipt,
	RecipeGeneric,
}

// RecipeNames returns the known recipe names in priority order,
// most specific first.
func RecipeNames() []string {
	result := make([]string, len(allRecipes))
	for i, r := range allRecipes {
		result[i] = string(r)
	}
	return result
}
