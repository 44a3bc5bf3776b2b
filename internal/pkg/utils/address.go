package utils

// ShortAddress renders the first and last four characters of an address joined by "...".
// Addresses shorter than eight characters overlap, the same way slicing would.
func ShortAddress(address string) string {
	if address == "" {
		return ""
	}
	head := address
	if len(head) > 4 {
		head = head[:4]
	}
	tail := address
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return head + "..." + tail
}
