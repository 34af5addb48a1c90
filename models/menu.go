package models

// MenuItem describes one entry of the fixed canteen menu.
type MenuItem struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Icon       string  `json:"icon"`
	Color      string  `json:"color"`
	PriceRupee float64 `json:"price_rupees"`
}

// MenuItems is the fixed menu shared by every canteen.
var MenuItems = []MenuItem{
	{ID: "vadapav", Name: "Vada Pav", Icon: "pizza", Color: "bg-orange-100 text-orange-700", PriceRupee: 25},
	{ID: "alooparatha", Name: "Aloo Paratha", Icon: "utensils", Color: "bg-yellow-100 text-yellow-700", PriceRupee: 40},
	{ID: "samosa", Name: "Samosa", Icon: "pizza", Color: "bg-amber-100 text-amber-700", PriceRupee: 20},
	{ID: "masaladosa", Name: "Masala Dosa", Icon: "utensils", Color: "bg-orange-50 text-orange-800", PriceRupee: 50},
	{ID: "cholebhature", Name: "Chole Bhature", Icon: "utensils", Color: "bg-red-50 text-red-800", PriceRupee: 60},
	{ID: "sandwich", Name: "Veg Sandwich", Icon: "sandwich", Color: "bg-green-100 text-green-700", PriceRupee: 35},
	{ID: "coffee", Name: "Cold Coffee", Icon: "coffee", Color: "bg-stone-100 text-stone-700", PriceRupee: 30},
}

// MenuItemByID looks up a menu entry; ok is false for unknown ids.
func MenuItemByID(id string) (MenuItem, bool) {
	for _, m := range MenuItems {
		if m.ID == id {
			return m, true
		}
	}
	return MenuItem{}, false
}
