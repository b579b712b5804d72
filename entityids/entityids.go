// Package entityids implements the Entity Id Table: a static bidirectional
// mapping between the external string identifiers entities carry in memory
// ("Zombie") and the integer identifiers the on-disk Compound actually
// stores. The table is authored once as a fixed set of known entity types;
// the reverse direction is built lazily from it, per §4.6.
package entityids

import (
	"fmt"
	"sync"
)

// UnknownEntityId reports a lookup failure in either direction. It is
// fatal to the chunk decode/encode in progress, per §7.
type UnknownEntityId struct {
	// Exactly one of Name/ID identifies the failed lookup; the other is zero.
	Name string
	ID   int
}

func (e *UnknownEntityId) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown entity id: name %q has no registered integer id", e.Name)
	}
	return fmt.Sprintf("unknown entity id: integer id %d has no registered name", e.ID)
}

// forward is the static name→id table. It is authored from the publicly
// known Pocket Edition entity registry and never mutated at runtime.
var forward = map[string]int{
	"Chicken":       10,
	"Cow":           11,
	"Pig":           12,
	"Sheep":         13,
	"Wolf":          14,
	"Villager":      15,
	"MushroomCow":   16,
	"Squid":         17,
	"Rabbit":        18,
	"Bat":           19,
	"IronGolem":     20,
	"SnowGolem":     21,
	"Ocelot":        22,
	"Horse":         23,
	"Donkey":        24,
	"Mule":          25,
	"PolarBear":     28,
	"Zombie":        32,
	"Creeper":       33,
	"Skeleton":      34,
	"Spider":        35,
	"ZombiePigman":  36,
	"Slime":         37,
	"Enderman":      38,
	"Silverfish":    39,
	"CaveSpider":    40,
	"Ghast":         41,
	"MagmaCube":     42,
	"Blaze":         43,
	"ZombieVillager": 44,
	"Witch":         45,
	"Stray":         46,
	"Husk":          47,
	"WitherSkeleton": 48,
	"Guardian":      49,
	"ElderGuardian":  50,
	"ShulkerBullet": 56,
	"Shulker":       69,
	"EnderDragon":   53,
	"Wither":        52,
	"PrimedTnt":     65,
	"FallingBlock":  66,
	"Item":          64,
	"Arrow":         80,
	"Snowball":      81,
	"Egg":           82,
	"Painting":      83,
	"Minecart":      84,
	"Boat":          90,
	"LightningBolt": 93,
	"XPOrb":         71,
}

var (
	reverseOnce sync.Once
	reverse     map[int]string
)

func buildReverse() {
	reverse = make(map[int]string, len(forward))
	for name, id := range forward {
		reverse[id] = name
	}
}

// ToID translates an external entity name to its on-disk integer id.
func ToID(name string) (int, error) {
	id, ok := forward[name]
	if !ok {
		return 0, &UnknownEntityId{Name: name}
	}
	return id, nil
}

// ToName translates an on-disk integer id to its external entity name,
// building the reverse map from the forward table on first use.
func ToName(id int) (string, error) {
	reverseOnce.Do(buildReverse)
	name, ok := reverse[id]
	if !ok {
		return "", &UnknownEntityId{ID: id}
	}
	return name, nil
}
