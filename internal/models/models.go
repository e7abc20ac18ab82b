package models

// All returns every model that AutoMigrate must create, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Listing{},
		&Message{},
		&SavedListing{},
		&PropertyReview{},
		&RoommateProfile{},
		&SystemLog{},
	}
}
