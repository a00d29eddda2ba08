package lexical

// DefaultPatterns returns the built-in restriction rule set. A fresh slice is
// returned on every call so callers may append to it.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Terms: []string{"violence"}, Except: []string{"against"}},
		{Terms: []string{"nudity", "naked", "porn"}},
		{Terms: []string{"sex", "sexual"}, Except: []string{"education"}},
		{Terms: []string{"profanity", "fuck", "shit", "bitch"}},
		{Terms: []string{"drugs", "heroin", "cocaine"}, Except: []string{"awareness"}},
		{Terms: []string{"murder"}},
		{Terms: []string{"abuse", "assault"}, Except: []string{"prevention"}},
		{Terms: []string{"weapons"}, Except: []string{"safety"}},
		{Terms: []string{"killing"}},
		{Terms: []string{"suicide"}, Except: []string{"prevention"}},
		{Terms: []string{"terrorist"}},
		{Terms: []string{"gore", "blood"}},
		{Terms: []string{"shooting"}, Except: []string{"range"}},
		{Terms: []string{"attack"}, Except: []string{"heart"}},
		{Terms: []string{"gambling"}, Except: []string{"game"}},
		{Terms: []string{"illegal"}, Except: []string{"immigration"}},
		{Terms: []string{"hate speech", "racist"}},
		{Terms: []string{"discrimination"}},
		{Terms: []string{"extremism"}},
		{Terms: []string{"propaganda"}},
		{Terms: []string{"corruption"}, Except: []string{"discussion"}},
		{Terms: []string{"scandal"}, Except: []string{"news"}},
		{Terms: []string{"harassment"}},
		{Terms: []string{"genocide", "massacre"}},
		{Terms: []string{"riot"}, Except: []string{"gear"}},
		{Terms: []string{"explosion"}, Except: []string{"fireworks"}},
	}
}
