package watcher

var IsScratchFile = isScratchFile
