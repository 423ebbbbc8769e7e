package schema

// SystemWebsiteSettingTable represents the 'system.website_setting' table
type SystemWebsiteSettingTable struct {
	Table     string
	Key       string
	Value     string
	UpdatedAt string
}

var SystemWebsiteSetting = SystemWebsiteSettingTable{
	Table:     "system.website_setting",
	Key:       "settingkey",
	Value:     "settingvalue",
	UpdatedAt: "updatedat",
}
