// Package gen generates runtime descriptor registrations for a loaded package.
//
// For every struct or defined type the generated file declares
//
//	var VillagerDescriptor = descriptor.MustOf[Villager](
//		descriptor.Implements[Tradeable](),
//		descriptor.Constructor(NewVillager),
//	)
//
// from the interfaces asserted in source and the New*/new* constructors found
// by the analyzer. Interfaces embedding others are narrowed with
// descriptor.Explicit to the methods of their own body. The file belongs to the inspected package, so restricted
// constructors can be referenced.
//
// Generation approach uses text/template + go/format.
package gen
