package config

// MaskKey masks an API key for log output: "sk-1...abcd".
// Keys of 8 characters or fewer keep only their first four characters.
func MaskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 4 {
		return key + "..."
	}
	if len(key) <= 8 {
		return key[:4] + "..."
	}
	return key[:4] + "..." + key[len(key)-4:]
}
