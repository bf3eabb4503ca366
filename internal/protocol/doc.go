// Package protocol implements the two wire formats spoken by
// Yeelight-protocol Wi-Fi bulbs.
//
// # Discovery Replies
//
// Discovery replies are HTTP-style header blocks: colon-separated
// key/value lines terminated by CRLF. ParseHeaders converts one reply
// into a Headers map:
//
//	HTTP/1.1 200 OK
//	Cache-Control: max-age=3600
//	Location: yeelight://192.168.1.40:55443
//	id: 0x0000000007fb9200
//	model: color
//	power: on
//
// Keys are lower-cased so lookups are case-insensitive. Lines without a
// colon are skipped; a malformed reply never produces an error, only a
// smaller map.
//
// # Control Commands
//
// Control commands and replies are single JSON objects, one per line,
// CRLF-terminated:
//
//	{"id":1,"method":"set_power","params":["on","smooth",500]}
//	{"id":1,"result":["ok"]}
//
// A rejected command carries an error object instead of a result:
//
//	{"id":1,"error":{"code":-1,"message":"unsupported method"}}
//
// This package is pure encode/decode; sockets and timeouts live in the
// discovery and bulb packages.
package protocol
