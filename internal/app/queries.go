package app

// PROPFIND bodies for the two listings.
const (
	FolderQuery = `<?xml version="1.0"?><d:propfind xmlns:d="DAV:"><d:prop><d:resourcetype/></d:prop></d:propfind>`
	PhotoQuery  = `<?xml version="1.0"?><d:propfind xmlns:d="DAV:" xmlns:oc="http://owncloud.org/ns"><d:prop><d:getlastmodified/><d:resourcetype/></d:prop></d:propfind>`
)
