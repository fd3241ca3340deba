package village

import "class-inspector/descriptor"

// Runtime descriptors of the village types, constructors in preference order.
var (
	VillagerType = descriptor.MustOf[Villager](
		descriptor.Implements[Tradeable](),
		descriptor.Constructor(newVillager),
		descriptor.Constructor(NewVillager),
	)

	MerchantType = descriptor.MustOf[Merchant](
		descriptor.Implements[Haggler](descriptor.Explicit("Haggle")),
		descriptor.Constructor(NewMerchant),
	)

	HutType = descriptor.MustOf[Hut](
		descriptor.Constructor(NewHut),
	)
)
