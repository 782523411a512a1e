package icons

// ID identifies one chrome icon.
type ID string

const (
	Home          ID = "home"
	MapPin        ID = "map-pin"
	PlusCircle    ID = "plus-circle"
	MessageCircle ID = "message-circle"
	User          ID = "user"
	Bell          ID = "bell"
)

// chrome lists the icons the sprite carries, in sprite order.
var chrome = [...]ID{Home, MapPin, PlusCircle, MessageCircle, User, Bell}

// All returns every chrome icon identifier.
func All() []ID {
	return append([]ID(nil), chrome[:]...)
}
