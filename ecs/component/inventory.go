package component

type Inventory struct {
	Items map[string]int
}

func (inv *Inventory) Add(item string, n int) {
	if inv.Items == nil {
		inv.Items = make(map[string]int)
	}
	inv.Items[item] += n
}

var InventoryComponent = NewComponent[Inventory]()
