package inventory

// SampleCatalog returns a small catalog of gear used by the demo server
// when no catalog file is configured.
func SampleCatalog() *Registry {
	return NewRegistry(
		ItemDescriptor{ID: "iron-helm", Name: "Iron Helm", Footprint: Footprint{W: 2, H: 2}, Category: CategoryHead},
		ItemDescriptor{ID: "leather-armor", Name: "Leather Armor", Footprint: Footprint{W: 2, H: 3}, Category: CategoryChest},
		ItemDescriptor{ID: "chain-gloves", Name: "Chain Gloves", Footprint: Footprint{W: 2, H: 2}, Category: CategoryHands},
		ItemDescriptor{ID: "light-boots", Name: "Light Boots", Footprint: Footprint{W: 2, H: 2}, Category: CategoryFeet},
		ItemDescriptor{ID: "sash", Name: "Sash", Footprint: Footprint{W: 2, H: 1}, Category: CategoryBelt},
		ItemDescriptor{ID: "jade-amulet", Name: "Jade Amulet", Footprint: Footprint{W: 1, H: 1}, Category: CategoryAmulet},
		ItemDescriptor{ID: "gold-ring", Name: "Gold Ring", Footprint: Footprint{W: 1, H: 1}, Category: CategoryRing},
		ItemDescriptor{ID: "short-sword", Name: "Short Sword", Footprint: Footprint{W: 1, H: 3}, Category: CategoryMainHand},
		ItemDescriptor{ID: "buckler", Name: "Buckler", Footprint: Footprint{W: 2, H: 2}, Category: CategoryOffHand},
		ItemDescriptor{ID: "healing-potion", Name: "Healing Potion", Footprint: Footprint{W: 1, H: 1}},
		ItemDescriptor{ID: "town-scroll", Name: "Town Portal Scroll", Footprint: Footprint{W: 1, H: 2}},
	)
}

// SampleInventory returns a 10x4 inventory holding a few items from
// SampleCatalog, laid out the way a freshly started character would have
// them.
func SampleInventory(opts ...Option) (*Inventory, *Registry) {
	reg := SampleCatalog()
	inv := New("sample", 10, 4, nil, opts...)
	for _, id := range []ItemID{"short-sword", "leather-armor", "healing-potion", "healing-potion", "town-scroll"} {
		if desc, ok := reg.Lookup(id); ok {
			_, _ = inv.Pickup(desc)
		}
	}
	return inv, reg
}
