package component

// PrefabSource remembers which prefab file built an entity so it can be
// reloaded when the file changes.
type PrefabSource struct {
	Path string
}

var PrefabSourceComponent = NewComponent[PrefabSource]()
