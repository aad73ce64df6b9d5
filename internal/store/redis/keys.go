package redis

// Key layout mirrors the browser storage keys of the storefront, one key
// per session per concern. The cart key doubles as the pub/sub channel for
// change notifications.
const keyPrefix = "crema_cafe"

func cartKey(sessionID string) string {
	return keyPrefix + ":cart:" + sessionID
}

func customizationKey(sessionID string) string {
	return keyPrefix + ":drink_details:" + sessionID
}

func preferencesKey(sessionID string) string {
	return keyPrefix + ":customer_data:" + sessionID
}

func backupKey(sessionID string) string {
	return keyPrefix + ":last_order_backup:" + sessionID
}

func historyKey(sessionID string) string {
	return keyPrefix + ":order_history:" + sessionID
}

func fallbackKey() string {
	return keyPrefix + ":fallback_orders"
}
