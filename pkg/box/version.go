package box

// Version is the library version reported in the default User-Agent.
const Version = "0.1.0"

// DefaultUserAgent is sent when Config.UserAgent is empty.
const DefaultUserAgent = "boxsdk-go/" + Version
