package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	// Accounts
	&User{},
	&Session{},
	// Catalog
	&Product{},
	&Vroom{},
	// Social edges
	&Follow{},
	&VroomFollow{},
	&ProductLike{},
	&ProductBookmark{},
	&Comment{},
	// Commerce
	&CartItem{},
	&Order{},
	// Messaging
	&Message{},
}
